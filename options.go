package hexview

// DefaultOptions are used by Open, New and FromBytes when nil options are
// passed.
var DefaultOptions = Options{
	ReadOnly: false,
	Lock:     false,
	Log:      func(msg string, args ...interface{}) {},
}

// Options represents configuration settings for a data model.
type Options struct {
	// ReadOnly opens the source without write access. Write and Flush fail
	// with io.ErrReadOnly.
	ReadOnly bool

	// Lock pins the file mapping into memory. Applies only to file-backed
	// models and is best-effort.
	Lock bool

	Log func(msg string, args ...interface{})
}

func (opts *Options) withDefaults() Options {
	if opts == nil {
		return DefaultOptions
	}
	o := *opts
	if o.Log == nil {
		o.Log = DefaultOptions.Log
	}
	return o
}
