// Package openapi exports form definitions as OpenAPI 3 request schemas using
// kin-openapi, so API gateways and generated clients see the same constraints
// the form enforces. UI metadata travels in the `x-formgen` extension.
package openapi
