package memstore

import (
	"context"
	"strings"
	"sync"
)

// Object is a stored upload.
type Object struct {
	ContentType string
	Data        []byte
}

// Objects is an in-memory object store. Public URLs point at
// {baseURL}/files/{bucket}/{name}.
type Objects struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]Object
}

// NewObjects returns an empty object store serving under baseURL.
func NewObjects(baseURL string) *Objects {
	return &Objects{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]Object),
	}
}

// Put stores data, replacing any object with the same name.
func (o *Objects) Put(_ context.Context, bucket, name, contentType string, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.objects[bucket+"/"+name] = Object{ContentType: contentType, Data: append([]byte(nil), data...)}
	return nil
}

// Delete removes an object. Deleting a missing object is not an error.
func (o *Objects) Delete(_ context.Context, bucket, name string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.objects, bucket+"/"+name)
	return nil
}

// PublicURL returns the address the mock server serves the object from.
func (o *Objects) PublicURL(bucket, name string) string {
	return o.baseURL + "/files/" + bucket + "/" + name
}

// Get returns a stored object.
func (o *Objects) Get(bucket, name string) (Object, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	obj, ok := o.objects[bucket+"/"+name]
	return obj, ok
}
