// Package systemd models service units and unit files and loads both
// listings from a source.Adapter.
//
// Every column enum has an explicit Unknown member and a total Parse
// function, so unexpected values from newer systemd releases degrade to
// Unknown instead of failing the parse.
package systemd
