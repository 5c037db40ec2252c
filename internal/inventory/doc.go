// Package inventory loads host inventories into model.Systems.
//
// An inventory file lists hosts with their connection details, the roles they
// play, the components they use, and extra attributes. It may also declare
// roles as ordered lists of components. The file extension picks the format;
// formats are pluggable through Loader.Use.
package inventory
