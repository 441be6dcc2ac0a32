package form

import "context"

type Repository interface {
	GetByID(ctx context.Context, id ID) (Form, error)
	HasCaptcha(ctx context.Context, id ID) (bool, error)
	ListFields(ctx context.Context, id ID) ([]Field, error)
}

type MailPublisher interface {
	PublishMail(ctx context.Context, mail Mail) error
}
