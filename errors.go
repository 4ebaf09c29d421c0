package wren

import "errors"

// ErrEmptySpendRecord is returned from [Node.AdmitRecord] when a record
// tagged as a spend decodes to an empty spend list.
// A spend record asserting nothing cannot be evidence of anything.
var ErrEmptySpendRecord = errors.New("spend record carries no spends")
