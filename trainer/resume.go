package trainer

import "github.com/pkg/errors"

// Resume loads the weights at *path into net when *resume is set.
func Resume(net Model, resume *bool, path *string) error {
	if resume == nil || !*resume || path == nil {
		return nil
	}
	return errors.Wrap(net.ReadZlibWeightsFromFile(*path), "cannot continue training")
}
