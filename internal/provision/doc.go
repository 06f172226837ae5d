// Package provision writes dynamic DNS client records into the hostname table
// of a deployed DDNS CloudFormation stack.
//
// A run verifies the stack, finds the table by its logical id, resolves the
// Route 53 hosted zone, writes the record and reads it back. The caller only
// ever sees the record with its shared secret masked.
package provision
