// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives bound request shapes from the handler, validates
// them, performs business operations, and calls repository
// methods to read and persist records.
package service

import (
	"github.com/deppfellow/bookboard/internal/repository"
	"github.com/deppfellow/bookboard/internal/server"
)

type Services struct {
	Books    *BookService
	Messages *MessageService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Books:    NewBookService(s, repos.Books),
		Messages: NewMessageService(s, repos.Messages),
	}, nil
}
