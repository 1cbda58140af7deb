package filesystem

import (
	"io"
	"os"

	"github.com/metafates/gache"
)

// CacheFs lets gache keep its files, such as the query history, on API.
type CacheFs struct{}

var _ gache.FileSystem = CacheFs{}

func (CacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (CacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
