package form

import (
	"context"
	"sync"
)

type FakeRepository struct {
	Forms           map[ID]Form
	Fields          map[ID][]Field
	GetByIDError    error
	HasCaptchaError error
	HasCaptchaCalls int
	lock            sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		Forms:  make(map[ID]Form),
		Fields: make(map[ID][]Field),
	}
}

func (r *FakeRepository) Add(f Form, fields ...Field) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Forms[f.ID] = f
	for _, field := range fields {
		field.FormID = f.ID
		r.Fields[f.ID] = append(r.Fields[f.ID], field)
	}
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (f Form, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.GetByIDError != nil {
		return f, r.GetByIDError
	}
	f, ok := r.Forms[id]
	if !ok {
		return f, ErrFormDoesNotExist
	}
	return f, nil
}

func (r *FakeRepository) HasCaptcha(ctx context.Context, id ID) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.HasCaptchaCalls++
	if r.HasCaptchaError != nil {
		return false, r.HasCaptchaError
	}
	for _, field := range r.Fields[id] {
		if field.IsCaptcha() {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeRepository) ListFields(ctx context.Context, id ID) ([]Field, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Forms[id]; !ok {
		return nil, ErrFormDoesNotExist
	}
	fields := make([]Field, len(r.Fields[id]))
	copy(fields, r.Fields[id])
	return fields, nil
}

type FakeMailPublisher struct {
	Published []Mail
	Error     error
}

func NewFakeMailPublisher() *FakeMailPublisher {
	return &FakeMailPublisher{}
}

func (p *FakeMailPublisher) PublishMail(ctx context.Context, mail Mail) error {
	if p.Error != nil {
		return p.Error
	}
	p.Published = append(p.Published, mail)
	return nil
}
