// Package pkgrouter is the HTTP surface shared by every module: an
// httprouter-backed router whose handlers return (payload, error) and are
// encoded into the {"message","data","meta"} envelope, with pkgerror values
// mapped to status codes.
package pkgrouter
