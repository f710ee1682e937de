// Package userdb runs one-shot database session scripts against a users
// table: seed, playground and lookup. Each run takes an explicit Store, runs
// one script, reports the outcome and always releases the connection.
package userdb
