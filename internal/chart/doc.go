// Package chart loads declarative chart definitions from HCL files. A
// chart block names one rendering job (catalogue, theme, labels, output);
// a single file or directory can define any number of them, and one
// invocation renders them all in order.
package chart
