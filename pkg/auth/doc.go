// Package auth implements the registration, login and OAuth identity flows.
//
// The Service orchestrates the use cases; the Directory owns user uniqueness
// and credential validation; the ProfileFactory creates the credential record
// plus exactly one of the Individual/Company profiles; the Linker binds users
// to third-party provider identities. All collaborators are passed in at
// construction, and every multi-table write runs inside one store.Atomic
// unit of work.
//
// Provider protocol exchange lives behind ProviderAdapter: the adapters turn
// a Google or Microsoft callback into a normalized OAuthPayload before the
// core is involved.
package auth
