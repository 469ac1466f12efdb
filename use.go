package hexview

import "errors"

// Use opens the named file, passes the model to fn and closes the model
// when fn returns, on every path. Errors from fn and Close are joined.
func Use(filePath string, opts *Options, fn func(m *Model) error) (err error) {
	m, err := Open(filePath, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, m.Close())
	}()

	return fn(m)
}
