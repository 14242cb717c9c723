/*
Package swaptest provides mocks and helpers for testing extensions
built on top of the swapper framework.
*/
package swaptest
