// Package inquiry validates and records the pricing and contact forms.
//
// A submission flows through Service.Submit: validation, a short simulated
// delay, persistence in SQLite, an e-mail notification through Resend and an
// event on NATS JetStream. Only validation and persistence can fail a
// submission; delivery problems are logged and counted.
package inquiry
