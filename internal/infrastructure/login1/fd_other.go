//go:build !unix

package login1

import "errors"

func closeFD(int) error {
	return errors.New("logind inhibitor locks are not supported on this platform")
}
