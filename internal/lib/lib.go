// Package lib groups the outbound integrations: the LLM client behind the
// discount oracle (llm), transactional email through Resend (email), and
// the Redis-backed task queue that delivers it (job).
package lib
