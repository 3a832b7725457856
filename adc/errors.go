package adc

import "github.com/cta-observatory/goeventio/errs"

func decodeErr(objType int, version int, offset int64, category string, err error) error {
	return &errs.DecodeError{ObjectType: objType, Version: version, Offset: offset, Category: category, Err: err}
}
