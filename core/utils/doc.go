// Package utils holds small helpers shared by the stores and the sync engine:
// optional-value pointers, global id parsing and JSON id lists.
package utils
