// Package repository adds filtered, sorted and bounded views on top of the
// store and is what the screens depend on.
package repository

import "github.com/balkashynov/studysmart/internal/db"

// New wires all repositories to one store
func New(store *db.Store) Repositories {
	return Repositories{
		Subjects: NewSubjects(store),
		Tasks:    NewTasks(store),
		Sessions: NewSessions(store),
	}
}

var (
	_ SubjectRepository = (*Subjects)(nil)
	_ TaskRepository    = (*Tasks)(nil)
	_ SessionRepository = (*Sessions)(nil)
)
