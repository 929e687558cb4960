// Package clustering is the root of a small clustering toolkit that compares
// Symmetric Non-negative Matrix Factorization (SymNMF) with Lloyd's k-means.
//
// Layout:
//
//	dataset/     - ordered point sets, Euclidean distance, CSV reader and 4-decimal writer
//	matrix/      - flat row-major Dense matrices, kernels, validators, parallel RowPool
//	similarity/  - Gaussian affinity W, degree D, normalized affinity A
//	symnmf/      - H initialization, multiplicative updates, factorization loop, labels
//	kmeans/      - first-k Lloyd iterations, nearest-centroid labels
//	silhouette/  - mean silhouette coefficient
//	pipeline/    - goal dispatch (sym, ddg, norm, symnmf) and engine comparison
//	config/      - TOML settings; logutil/ - zap loggers; metrics/ - Prometheus
//	cmd/symnmf   - prints a goal matrix for a point file
//	cmd/analysis - prints the silhouette score of both engines
//
// Quick example:
//
//	ds, _ := dataset.Load("points.txt")
//	cmp, _ := pipeline.Compare(ctx, ds, 3, config.Default(), nil)
//	fmt.Printf("nmf: %.4f\nkmeans: %.4f\n", cmp.NMF, cmp.KMeans)
//
// Every computation is deterministic: the only random draw (the initial
// SymNMF factor) comes from a seeded source, and parallel products are
// bit-identical to serial ones.
package clustering
