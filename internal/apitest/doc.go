// Package apitest runs an in-memory notes API for tests.
//
// The server speaks the same REST dialect as the production backend: bearer
// JWTs from POST /auth/login, FastAPI-style {"detail": ...} error bodies,
// a version snapshot appended before every update and before every restore,
// and 404s scoped to the owner of a note. It records how often each route
// was hit so tests can assert on the number of server calls.
package apitest
