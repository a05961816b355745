package passhash

import "errors"

var ErrHashingFailed = errors.New("passhash: hashing failed")
