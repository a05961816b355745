// Package store owns the relational data model behind registration and
// login: the User identity anchor, its credential record, the mutually
// exclusive Individual/Company profiles, and third-party OAuthAccount links.
//
// Multi-table writes run through Atomic, a transaction-callback unit of work:
// the callback receives a transaction-scoped Store, commits on nil return and
// rolls back on error, so partial registration state is never observable.
package store
