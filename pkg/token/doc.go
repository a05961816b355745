// Package token issues and verifies the two JWT classes used by the auth
// flows: confirmed access tokens asserting a registered identity, and
// short-lived pending tokens asserting a third-party identity that has not
// completed registration yet. Each class carries its own secret and TTL.
package token
