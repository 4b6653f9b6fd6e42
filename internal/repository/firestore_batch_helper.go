package repository

import "Thikana-App/internal/domain/model"

// ChunkIDs IDリストをFirestoreの'in'クエリ上限以下のチャンクに分割する
// 23件 → [10, 10, 3] のように先頭から詰める
func ChunkIDs(ids []string, chunkSize int) [][]string {
	if chunkSize <= 0 {
		chunkSize = model.FirestoreBatchLimit
	}
	if len(ids) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(ids)+chunkSize-1)/chunkSize)
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// DedupePosts 投稿IDで重複を除去する。初出の順序を維持するため冪等
// （同じ入力に2回適用しても結果は変わらない）
func DedupePosts(posts []*model.Post) []*model.Post {
	seen := make(map[string]struct{}, len(posts))
	result := make([]*model.Post, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		if _, ok := seen[post.ID]; ok {
			continue
		}
		seen[post.ID] = struct{}{}
		result = append(result, post)
	}
	return result
}

// UniqueIDs ID集合から重複を除去する。順序は維持する
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
