//go:build !libpostal

package libpostal

// Available reports whether Parse calls into libpostal.
const Available = false

// Parse always fails without the libpostal build tag.
func Parse(text string) ([]Component, error) {
	return nil, ErrUnavailable
}
