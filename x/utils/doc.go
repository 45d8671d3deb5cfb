/*
Package utils provides decorators shared by every transaction stack: panic
recovery, logging of the processing result and savepoints.
*/
package utils
