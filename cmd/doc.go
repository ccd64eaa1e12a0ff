// Package cmd contains command-line utilities for interleaving: interleave builds a method from a file of ranked
// lists, and simulate runs click simulations over a learning to rank dataset. It also contains supporting code for
// these utilities, such as loading lists from disk.
package cmd
