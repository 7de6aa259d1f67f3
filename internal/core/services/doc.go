// Package services contains the application's core business logic.
// Services implement the driving ports and orchestrate driven ports
// (record stores, embedding providers, vector indexes, LLMs) to build,
// query, and evaluate the researcher index.
package services
