package utils_test

import (
	// Go Internal Packages
	"testing"

	// Local Packages
	utils "tx-risk/utils"

	// External Packages
	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "c": 3, "a": 1}
	assert.Equal(t, []string{"a", "b", "c"}, utils.SortedKeys(m))
	assert.Empty(t, utils.SortedKeys(map[string]int{}))
}

func TestJoinSorted(t *testing.T) {
	in := []string{"sinks", "mongo", "kafka"}
	assert.Equal(t, "kafka,mongo,sinks", utils.JoinSorted(in, ","))
	assert.Equal(t, []string{"sinks", "mongo", "kafka"}, in)
}
