package s3

// Placeholder for an S3 backed ResultWriter implementation.
//
// Intent: ship run artifacts to AWS S3 (or compatible APIs) so batch
// campaigns on ephemeral compute keep their results after the node is
// reclaimed. This file intentionally remains a stub so that downstream
// contributors can supply credentials / client wiring without pulling an AWS
// dependency into minimal builds. If you implement this, keep the dependency
// surface narrow and make the configuration (bucket, key prefix, ACL,
// encryption) explicit via a small Config struct, and reuse the shared
// renderers from the parent package so object contents stay byte-identical
// with local files.
