// Package domain contains the phonebook entities.
//
// Person is the only entity. Its identifier is a UUID assigned by the
// service on creation; ParsePersonID classifies any other string as a
// cast error so handlers can answer "malformatted id".
//
// Types ending in "Input" are request bodies for create/update operations.
package domain
