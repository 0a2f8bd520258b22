package admission

import "errors"

var (
	ErrNilStore = errors.New("nil store")
)
