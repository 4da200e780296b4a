// Package sqlc holds the query sources the generated package is built from.
package sqlc

//go:generate sqlc generate -f ../../../sqlc.yaml
