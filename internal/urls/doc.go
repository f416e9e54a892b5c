// Package urls holds the documentation links printed by wsdemo commands.
//
// Keeping them in one place lets the links be updated before a release
// without hunting through command code.
package urls
