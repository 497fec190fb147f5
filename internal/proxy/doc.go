/*
Package proxy fetches a remote HTML page and rewrites it for display.

# Pipeline

Each request runs these stages once, in order:

 1. Validating: the request URL must be a non-empty absolute http(s) URL.
 2. Fetching: a single GET through the shared HTTP client.
 3. Gating: the response must declare a text/html content type.
 4. Transforming: URL absolutization, then text substitution.

Any failure ends the request with an Envelope carrying the error message.
Invalid input and non-HTML content map to 400, fetch failures to 500.

# Transformation

The URL pass rewrites href and src attributes, and url(...) references inside
inline style attributes, to absolute form against the request URL. A reference
that cannot be resolved is left as is.

The text pass applies DefaultSubstitutions to every visible text node under
<body> and to the document title. Attribute values are never touched by this
pass, so rewritten URLs are not affected by the substitution.
*/
package proxy
