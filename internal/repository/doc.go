// Package repository contains data access implementations for the phonebook.
//
// Repository interfaces are defined at the service layer (consumer-defined
// interfaces). This package tree contains the concrete implementations;
// postgres is the only store.
//
// All repository implementations are safe for concurrent use.
// Connection pools are managed at the database layer.
package repository
