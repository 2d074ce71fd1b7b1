// Package handles loads the list of product handles that drives the product
// and attribute passes, from a local file or from object storage.
package handles
