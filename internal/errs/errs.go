// Package errs defines the error shapes the API returns and the error kinds
// the rental workflow raises.
//
// Every failed request is rendered as an HTTPError:
//
//	{"code":"BAD_REQUEST","message":"Validation failed","status":400,"override":true,
//	 "errors":[{"field":"age","error":"is required"}]}
package errs
