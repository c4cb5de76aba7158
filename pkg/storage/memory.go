package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/voidshard/pipewright/pkg/errors"
)

// Memory is a BlobStore held in process memory. It's intended for tests &
// single process development setups.
type Memory struct {
	lock    sync.RWMutex
	objects map[string]*memoryObject
}

type memoryObject struct {
	data []byte
	info ObjectInfo
}

func NewMemory() *Memory {
	return &Memory{objects: map[string]*memoryObject{}}
}

func (m *Memory) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.objects[key] = &memoryObject{
		data: append([]byte{}, data...),
		info: ObjectInfo{Key: key, Size: int64(len(data)), ContentType: contentType, Updated: time.Now().UTC()},
	}
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w object %s", errors.ErrNotFound, key)
	}
	return append([]byte{}, obj.data...), nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *Memory) Attrs(ctx context.Context, key string) (*ObjectInfo, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w object %s", errors.ErrNotFound, key)
	}
	info := obj.info
	return &info, nil
}
