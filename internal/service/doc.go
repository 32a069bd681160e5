// Package service contains the business logic layer for the phonebook.
//
// PersonService sits between the HTTP handlers and the repository. It owns
// the rules the store does not enforce: a person needs a name, a new name
// must not already be taken, and a missing number becomes "".
//
// Services depend on repository interfaces defined in this package and
// are safe for concurrent use from multiple goroutines.
package service
