// Package formats provides the file codecs around the VAT encoder: an
// OpenEXR writer for the packed pixel grids, a Wavefront OBJ reader for
// frame sequences, and a glTF writer for the reference mesh.
package formats
