package globals

// ManifestsDir is the subdirectory under the models directory holding the
// manifest tree. The path from here down to a leaf file encodes the model name.
const ManifestsDir = "manifests"

// BlobsDir is the subdirectory under the models directory where content
// addressed blobs are stored flat, named "<algorithm>-<hex>".
const BlobsDir = "blobs"
