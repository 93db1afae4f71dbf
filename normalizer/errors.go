package normalizer

import "errors"

// ErrRecordIncomplete signals a raw record missing its identifier or launch
// date. Such records are dropped from the batch, never failing it as a whole.
var ErrRecordIncomplete = errors.New("record incomplete")
