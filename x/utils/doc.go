/*
Package utils contains decorators shared by every route of the
application: panic recovery, transaction logging and savepoints.
*/
package utils
