// Package display renders digest results.
//
// Text output reproduces the classic ft_ssl layouts (default, quiet,
// reverse, echo) through fasttemplate layouts with "{{" and "}}" tags; a
// custom layout may replace them. JSON output writes one record per
// line with goccy/go-json. Digests are lowercase hexadecimal unless a
// multibase encoding or multihash wrapping is configured.
//
// Template variables: algorithm, label, kind, name, digest.
package display
