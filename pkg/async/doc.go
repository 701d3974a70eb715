// Package async runs independent blocking calls concurrently and collects
// their results.
//
//	cats := async.Go(ctx, func(ctx context.Context) (*blog.CategoryList, error) {
//	    return api.ListCategories(ctx, apiclient.ListOptions{})
//	})
//	posts := async.Go(ctx, func(ctx context.Context) (*blog.PostList, error) {
//	    return api.ListPosts(ctx, apiclient.ListOptions{})
//	})
//	c, cErr := cats.Await()
//	p, pErr := posts.Await()
//
// Futures resolve independently. WaitAll is for callers that need every
// result; Settle is for callers that render whatever succeeded.
package async
