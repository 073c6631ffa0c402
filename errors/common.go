package errors

import "fmt"

// InvalidInputErr wraps a document that could not be decoded into a transaction list.
func InvalidInputErr(err error) error {
	return E(Invalid, "invalid transactions input", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// MalformedRecordErr reports a transaction at position index whose field could not be coerced.
func MalformedRecordErr(index int, field string, err error) error {
	return E(Invalid, fmt.Sprintf("malformed transaction at index %d: field %s", index, field), err)
}

// UndecodableRecordErr reports a queue record whose value is not a JSON transaction.
func UndecodableRecordErr(topic string, partition int32, offset int64, err error) error {
	msg := fmt.Sprintf("undecodable record %s/%d@%d", topic, partition, offset)
	return E(Invalid, msg, err)
}
