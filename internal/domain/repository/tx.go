package repository

import "context"

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Users         UserRepository
	Customers     CustomerRepository
	Documents     DocumentRepository
	Tasks         TaskRepository
	Relationships RelationshipRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
// Las validaciones de referencia y la escritura que las sigue ven la misma foto de datos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
