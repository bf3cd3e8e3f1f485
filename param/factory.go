// Package param builds and recycles command parameter objects.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package param

import (
	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/pool"
)

var _ api.ParameterFactory = (*Factory)(nil)

// Factory implements reset-or-build. When an existing object is supplied it
// is overwritten in place; otherwise one is taken from objects.
type Factory struct {
	objects api.ObjectPool[*api.Parameter]
}

// NewFactory returns a factory backed by a private parameter object pool.
func NewFactory() *Factory {
	return &Factory{
		objects: pool.NewSyncPool(func() *api.Parameter { return new(api.Parameter) }),
	}
}

// NewFactoryWithPool lets callers share an object pool between factories.
// A nil objects pool makes the factory allocate every new parameter.
func NewFactoryWithPool(objects api.ObjectPool[*api.Parameter]) *Factory {
	return &Factory{objects: objects}
}

// ResetOrBuild fills existing (or a fresh object) with the given fields.
func (f *Factory) ResetOrBuild(existing *api.Parameter, name string, value any, dbType api.DbType, size int, dir api.Direction) *api.Parameter {
	p := existing
	if p == nil {
		p = f.acquire()
	}
	p.Name = name
	p.Value = value
	p.DbType = dbType
	p.Size = size
	p.Direction = dir
	return p
}

// Release hands p back for reuse by later ResetOrBuild(nil, ...) calls.
// The caller must hold the only reference to p.
func (f *Factory) Release(p *api.Parameter) {
	if p == nil || f.objects == nil {
		return
	}
	p.Reset()
	f.objects.Put(p)
}

func (f *Factory) acquire() *api.Parameter {
	if f.objects == nil {
		return new(api.Parameter)
	}
	return f.objects.Get()
}

// Build is shorthand for ResetOrBuild(nil, ...).
func (f *Factory) Build(name string, value any, dbType api.DbType, size int, dir api.Direction) *api.Parameter {
	return f.ResetOrBuild(nil, name, value, dbType, size, dir)
}
