// Package tlsroots builds the trust store for https backends: the system
// roots plus an optional private CA bundle, exposed as a ready transport.
package tlsroots
