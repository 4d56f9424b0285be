package httpapi

import (
	"net/http"
	"time"

	"assistd/pkg/types"
)

// handleEmbed implements POST /api/embeddings/generate.
func (s *server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	var req types.EmbedRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	requestDebugf(r, "embed chars=%d", len(req.Text))

	ctx, cancel := requestContext(r)
	defer cancel()

	start := time.Now()
	vec, err := s.emb.Embed(ctx, req.Text)
	observeInference(types.ServiceEmbeddings, start, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.EmbedResponse{Embedding: vec, Dimension: len(vec)})
}

// handleEmbedBatch implements POST /api/embeddings/generate-batch.
func (s *server) handleEmbedBatch(w http.ResponseWriter, r *http.Request) {
	var req types.EmbedBatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	requestDebugf(r, "embed_batch texts=%d", len(req.Texts))

	ctx, cancel := requestContext(r)
	defer cancel()

	start := time.Now()
	vecs, err := s.emb.EmbedBatch(ctx, req.Texts)
	observeInference(types.ServiceEmbeddings, start, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	dim := 0
	if len(vecs) > 0 {
		dim = len(vecs[0])
	}
	writeJSON(w, http.StatusOK, types.EmbedBatchResponse{
		Embeddings: vecs,
		Dimension:  dim,
		Count:      len(vecs),
	})
}

// handleSimilarity implements POST /api/embeddings/similarity.
func (s *server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req types.SimilarityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sim, err := s.emb.Similarity(req.Embedding1, req.Embedding2)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SimilarityResponse{Similarity: sim})
}

// handleSearch implements POST /api/embeddings/search.
func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req types.SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	results, err := s.emb.Search(req.QueryEmbedding, req.CandidateEmbeddings, req.TopK)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SearchResponse{Results: results})
}

// handleEmbeddingsTest implements POST /api/embeddings/test.
func (s *server) handleEmbeddingsTest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, s.emb.Test(ctx))
}
