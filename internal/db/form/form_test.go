package form

import (
	"context"
	"formcaptcha/internal/core/domain/form"
	"formcaptcha/internal/db"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	pool       *pgxpool.Pool
	repository *PgxFormRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.repository = NewPgxFormRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxFormRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createForm(title string, fieldTypes ...form.FieldType) form.ID {
	ctx := context.Background()
	var id int64
	err := s.pool.QueryRow(ctx, `INSERT INTO form (title) VALUES ($1) RETURNING id`, title).Scan(&id)
	if err != nil {
		s.FailNow(err.Error())
	}
	for i, fieldType := range fieldTypes {
		_, err := s.pool.Exec(
			ctx,
			`INSERT INTO field (form_id, type, title, marker, sorting) VALUES ($1, $2, $3, $4, $5)`,
			id,
			string(fieldType),
			string(fieldType),
			string(fieldType),
			len(fieldTypes)-i,
		)
		if err != nil {
			s.FailNow(err.Error())
		}
	}
	return form.ID(id)
}

func (s *testSuite) TestGetByID() {
	id := s.createForm("Contact")

	f, err := s.repository.GetByID(context.Background(), id)

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(form.Form{ID: id, Title: "Contact"}, f)
}

func (s *testSuite) TestGetByIDDoesNotExist() {
	_, err := s.repository.GetByID(context.Background(), form.ID(404))
	s.Require().ErrorIs(err, form.ErrFormDoesNotExist)
}

func (s *testSuite) TestHasCaptcha() {
	withCaptcha := s.createForm("With captcha", form.FieldTypeInput, form.FieldTypeCaptcha)
	withoutCaptcha := s.createForm("Without captcha", form.FieldTypeInput, form.FieldTypeTextarea)

	assert := s.Require()
	hasCaptcha, err := s.repository.HasCaptcha(context.Background(), withCaptcha)
	assert.Nil(err)
	assert.True(hasCaptcha)

	hasCaptcha, err = s.repository.HasCaptcha(context.Background(), withoutCaptcha)
	assert.Nil(err)
	assert.False(hasCaptcha)

	hasCaptcha, err = s.repository.HasCaptcha(context.Background(), form.ID(404))
	assert.Nil(err)
	assert.False(hasCaptcha)
}

func (s *testSuite) TestListFieldsOrderedBySorting() {
	id := s.createForm("Contact", form.FieldTypeInput, form.FieldTypeCaptcha)

	fields, err := s.repository.ListFields(context.Background(), id)

	assert := s.Require()
	assert.Nil(err)
	assert.Len(fields, 2)
	assert.Equal(form.FieldTypeCaptcha, fields[0].Type)
	assert.Equal(form.FieldTypeInput, fields[1].Type)
	assert.Equal(id, fields[0].FormID)
}

func (s *testSuite) TestListFieldsFormDoesNotExist() {
	_, err := s.repository.ListFields(context.Background(), form.ID(404))
	s.Require().ErrorIs(err, form.ErrFormDoesNotExist)
}
