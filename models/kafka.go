package models

type Record struct {
	Key       []byte `json:"key"`
	Value     []byte `json:"value"`
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
	Offset    int64  `json:"offset"`
}
