package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
	"github.com/vadimbarashkov/ngo-site/internal/usecase"
)

func (suite *HandlersTestSuite) TestListCollections() {
	suite.Run("success", func() {
		suite.contentUseCaseMock.
			On("Collections").
			Once().
			Return([]entity.CollectionInfo{
				{Name: "blog", Count: 3},
				{Name: "case-studies", Count: 1},
			})

		resp := suite.e.GET("/api/v1/content").
			Expect().
			Status(http.StatusOK)

		resp.Header("Cache-Control").IsEqual("public, max-age=300")

		collections := resp.JSON().Object().Value("collections").Array()
		collections.Length().IsEqual(2)
		collections.Value(0).Object().HasValue("name", "blog").HasValue("count", 3)
	})
}

func (suite *HandlersTestSuite) TestListPosts() {
	const path = "/api/v1/content/{collection}"

	suite.Run("invalid page", func() {
		resp := suite.e.GET(path, "blog").
			WithQuery("page", "two").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object()

		resp.HasValue("message", "invalid query parameter")
		resp.Value("errors").Array().Value(0).Object().HasValue("field", "page")
	})

	suite.Run("invalid page size", func() {
		suite.e.GET(path, "blog").
			WithQuery("page_size", "1.5").
			Expect().
			Status(http.StatusBadRequest).
			JSON().Object().
			Value("errors").Array().Value(0).Object().HasValue("field", "page_size")
	})

	suite.Run("collection not found", func() {
		suite.contentUseCaseMock.
			On("ListPosts", usecase.ListPostsParams{Collection: "events"}).
			Once().
			Return(nil, entity.ErrCollectionNotFound)

		resp := suite.e.GET(path, "events").
			Expect().
			Status(http.StatusNotFound)

		resp.Header("Cache-Control").IsEqual("no-store")
		resp.JSON().Object().
			HasValue("message", "collection not found")
	})

	suite.Run("server error", func() {
		suite.contentUseCaseMock.
			On("ListPosts", usecase.ListPostsParams{Collection: "blog"}).
			Once().
			Return(nil, errors.New("unknown error"))

		suite.e.GET(path, "blog").
			Expect().
			Status(http.StatusInternalServerError).
			Header("Cache-Control").IsEqual("no-store")
	})

	suite.Run("success", func() {
		params := usecase.ListPostsParams{
			Collection: "blog",
			Category:   "Case Study",
			Tag:        "water",
			Page:       2,
			PageSize:   1,
		}

		suite.contentUseCaseMock.
			On("ListPosts", params).
			Once().
			Return(&entity.Page[*entity.Post]{
				Items: []*entity.Post{
					{
						Slug:        "clean-water",
						Collection:  "blog",
						Title:       "Clean Water",
						Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
						Category:    "Case Study",
						Tags:        []string{"water"},
						ReadingTime: 2,
						HTML:        "<p>body</p>",
					},
				},
				Page:       2,
				PageSize:   1,
				TotalItems: 3,
				TotalPages: 3,
			}, nil)

		resp := suite.e.GET(path, "blog").
			WithQuery("category", "Case Study").
			WithQuery("tag", "water").
			WithQuery("page", 2).
			WithQuery("page_size", 1).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.HasValue("page", 2)
		resp.HasValue("page_size", 1)
		resp.HasValue("total_items", 3)
		resp.HasValue("total_pages", 3)

		item := resp.Value("items").Array().Value(0).Object()
		item.HasValue("slug", "clean-water")
		item.HasValue("date", "2024-03-15T00:00:00Z")
		item.HasValue("reading_time", 2)
		item.NotContainsKey("html")
	})

	suite.Run("undated post without tags", func() {
		suite.contentUseCaseMock.
			On("ListPosts", usecase.ListPostsParams{Collection: "pages"}).
			Once().
			Return(&entity.Page[*entity.Post]{
				Items:      []*entity.Post{{Slug: "about", Collection: "pages", Title: "About"}},
				Page:       1,
				PageSize:   10,
				TotalItems: 1,
				TotalPages: 1,
			}, nil)

		item := suite.e.GET(path, "pages").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("items").Array().Value(0).Object()

		item.NotContainsKey("date")
		item.Value("tags").Array().IsEmpty()
	})
}

func (suite *HandlersTestSuite) TestGetPost() {
	const path = "/api/v1/content/{collection}/{slug}"

	suite.Run("post not found", func() {
		suite.contentUseCaseMock.
			On("GetPost", "blog", "missing").
			Once().
			Return(nil, entity.ErrPostNotFound)

		resp := suite.e.GET(path, "blog", "missing").
			Expect().
			Status(http.StatusNotFound)

		resp.Header("Cache-Control").IsEqual("no-store")
		resp.JSON().Object().
			HasValue("message", "post not found")
	})

	suite.Run("success", func() {
		suite.contentUseCaseMock.
			On("GetPost", "blog", "hello").
			Once().
			Return(&entity.Post{
				Slug:       "hello",
				Collection: "blog",
				Title:      "Hello",
				Tags:       []string{"news"},
				HTML:       "<p>Hello</p>",
			}, nil)

		resp := suite.e.GET(path, "blog", "hello").
			Expect().
			Status(http.StatusOK)

		resp.Header("Cache-Control").IsEqual("public, max-age=300")
		resp.JSON().Object().
			HasValue("title", "Hello").
			HasValue("html", "<p>Hello</p>").
			HasValue("tags", []string{"news"})
	})
}

func (suite *HandlersTestSuite) TestRelatedPosts() {
	const path = "/api/v1/content/{collection}/{slug}/related"

	suite.Run("invalid limit", func() {
		suite.e.GET(path, "blog", "hello").
			WithQuery("limit", "many").
			Expect().
			Status(http.StatusBadRequest)
	})

	suite.Run("post not found", func() {
		suite.contentUseCaseMock.
			On("RelatedPosts", "blog", "missing", 0).
			Once().
			Return(nil, entity.ErrPostNotFound)

		suite.e.GET(path, "blog", "missing").
			Expect().
			Status(http.StatusNotFound)
	})

	suite.Run("success", func() {
		suite.contentUseCaseMock.
			On("RelatedPosts", "blog", "hello", 2).
			Once().
			Return([]*entity.Post{
				{Slug: "a", Collection: "blog"},
				{Slug: "b", Collection: "blog"},
			}, nil)

		items := suite.e.GET(path, "blog", "hello").
			WithQuery("limit", 2).
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("items").Array()

		items.Length().IsEqual(2)
		items.Value(0).Object().HasValue("slug", "a")
		items.Value(1).Object().HasValue("slug", "b")
	})

	suite.Run("no related posts", func() {
		suite.contentUseCaseMock.
			On("RelatedPosts", "blog", "lonely", 0).
			Once().
			Return([]*entity.Post{}, nil)

		suite.e.GET(path, "blog", "lonely").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("items").Array().IsEmpty()
	})
}

func (suite *HandlersTestSuite) TestTerms() {
	suite.Run("categories", func() {
		suite.contentUseCaseMock.
			On("Categories", "blog").
			Once().
			Return([]entity.TermCount{{Name: "Case Study", Count: 2}, {Name: "News", Count: 1}}, nil)

		items := suite.e.GET("/api/v1/content/{collection}/categories", "blog").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("items").Array()

		items.Length().IsEqual(2)
		items.Value(0).Object().HasValue("name", "Case Study").HasValue("count", 2)
	})

	suite.Run("tags", func() {
		suite.contentUseCaseMock.
			On("Tags", "blog").
			Once().
			Return([]entity.TermCount{{Name: "water", Count: 4}}, nil)

		suite.e.GET("/api/v1/content/{collection}/tags", "blog").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("items").Array().Value(0).Object().HasValue("name", "water")
	})

	suite.Run("collection not found", func() {
		suite.contentUseCaseMock.
			On("Tags", "events").
			Once().
			Return(nil, entity.ErrCollectionNotFound)

		suite.e.GET("/api/v1/content/{collection}/tags", "events").
			Expect().
			Status(http.StatusNotFound)
	})
}
