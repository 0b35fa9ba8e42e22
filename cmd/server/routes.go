package main

import (
	"gem-auction.backend/internal/interfaces/http/handlers"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	authHandler          *handlers.AuthHandler
	userHandler          *handlers.UserHandler
	verificationHandler  *handlers.VerificationHandler
	gemstoneHandler      *handlers.GemstoneHandler
	auctionHandler       *handlers.AuctionHandler
	bidHandler           *handlers.BidHandler
	paymentHandler       *handlers.PaymentHandler
	onlinePaymentHandler *handlers.OnlinePaymentHandler
	faqHandler           *handlers.FAQHandler
	authMiddleware       gin.HandlerFunc
	optionalAuth         gin.HandlerFunc
	idempotency          gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	auth := d.authMiddleware
	admin := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", d.authHandler.Register)
			authRoutes.POST("/login", d.authHandler.Login)
			authRoutes.POST("/logout", d.authHandler.Logout)
			authRoutes.GET("/me", auth, d.authHandler.Me)
		}

		verification := api.Group("/verification", auth)
		{
			verification.GET("/status", d.verificationHandler.GetStatus)
			verification.POST("/nic/upload", d.verificationHandler.UploadNIC)
			verification.POST("/business/upload", d.verificationHandler.UploadBusiness)
			verification.POST("/business/skip", d.verificationHandler.SkipBusiness)
			verification.GET("/payout", d.verificationHandler.GetPayout)
			verification.PUT("/payout", d.verificationHandler.SetPayout)
			verification.POST("/seller/request", d.verificationHandler.RequestSellerReview)

			verification.POST("/nic/update-status", admin, d.verificationHandler.UpdateNICStatus)
			verification.POST("/business/update-status", admin, d.verificationHandler.UpdateBusinessStatus)
			verification.POST("/seller/update-status", admin, d.verificationHandler.UpdateSellerStatus)
			verification.GET("/seller/pending", admin, d.verificationHandler.ListPendingSellers)
		}

		gemstones := api.Group("/gemstones")
		{
			gemstones.GET("", d.gemstoneHandler.ListPublic)
			gemstones.GET("/mine", auth, d.gemstoneHandler.ListMine)
			gemstones.GET("/:id", d.optionalAuth, d.gemstoneHandler.Get)
			gemstones.GET("/:id/auctions", d.auctionHandler.ListByGem)
			gemstones.POST("", auth, d.gemstoneHandler.Create)
			gemstones.PUT("/:id", auth, d.gemstoneHandler.Update)
			gemstones.POST("/:id/images", auth, d.gemstoneHandler.UploadImages)
			gemstones.POST("/:id/submit", auth, d.gemstoneHandler.Submit)
			gemstones.DELETE("/:id", auth, d.gemstoneHandler.Deactivate)
		}

		auctions := api.Group("/auctions")
		{
			auctions.GET("", d.auctionHandler.List)
			auctions.GET("/:id", d.auctionHandler.Get)
			auctions.GET("/:id/bids", d.bidHandler.ListByAuction)
			auctions.POST("", auth, d.auctionHandler.Create)
			auctions.POST("/:id/bids", auth, d.auctionHandler.PlaceBid)
			auctions.POST("/:id/complete", auth, d.auctionHandler.Complete)
			auctions.POST("/:id/cancel", auth, d.auctionHandler.Cancel)
		}

		bids := api.Group("/bids")
		{
			bids.POST("", auth, d.bidHandler.PlaceGemBid)
			bids.GET("/gem/:gemId", d.bidHandler.ListByGem)
			bids.GET("/mine", auth, d.bidHandler.ListMine)
		}

		payments := api.Group("/payments", auth)
		{
			payments.POST("", d.idempotency, d.paymentHandler.CreatePayment)
			payments.GET("/mine", d.paymentHandler.ListMine)
			payments.GET("/:id", d.paymentHandler.GetPayment)
			payments.GET("", admin, d.paymentHandler.List)
			payments.PUT("/:id/status", admin, d.paymentHandler.UpdateStatus)
			payments.DELETE("/:id", admin, d.paymentHandler.Delete)
		}

		online := api.Group("/online-payments", auth)
		{
			online.POST("", d.onlinePaymentHandler.Create)
			online.GET("", d.onlinePaymentHandler.ListMine)
			online.POST("/verify-otp", d.onlinePaymentHandler.VerifyOTP)
			online.GET("/:id", d.onlinePaymentHandler.Get)
			online.POST("/:id/resend-otp", d.onlinePaymentHandler.ResendOTP)
			online.PUT("/:id/complete", d.onlinePaymentHandler.Complete)
			online.PUT("/:id/cancel", d.onlinePaymentHandler.Cancel)
			online.PUT("/:id/fail", admin, d.onlinePaymentHandler.MarkFailed)
		}

		api.GET("/faqs", d.faqHandler.ListPublished)

		adminRoutes := api.Group("/admin", auth, admin)
		{
			adminRoutes.GET("/users", d.userHandler.ListUsers)
			adminRoutes.PUT("/users/:id/status", d.userHandler.UpdateUserStatus)
			adminRoutes.PUT("/users/:id/registration-payment", d.verificationHandler.UpdateRegistrationPayment)

			adminRoutes.GET("/gemstones", d.gemstoneHandler.ListAll)
			adminRoutes.GET("/gemstones/pending", d.gemstoneHandler.ListPendingReview)
			adminRoutes.PUT("/gemstones/bulk", d.gemstoneHandler.BulkUpdate)
			adminRoutes.POST("/gemstones/:id/review", d.gemstoneHandler.StartReview)
			adminRoutes.POST("/gemstones/:id/verify", d.gemstoneHandler.Verify)
			adminRoutes.POST("/gemstones/:id/reject", d.gemstoneHandler.Reject)

			adminRoutes.GET("/bids", d.bidHandler.ListAll)

			adminRoutes.GET("/faqs", d.faqHandler.ListAll)
			adminRoutes.POST("/faqs", d.faqHandler.Create)
			adminRoutes.PUT("/faqs/:id", d.faqHandler.Update)
			adminRoutes.DELETE("/faqs/:id", d.faqHandler.Delete)
		}
	}
}

// registerGemstoneAliasRoutes mounts the bid endpoints the listing front-end
// calls under /gemstone.
func registerGemstoneAliasRoutes(r *gin.Engine, d routeDeps) {
	gemstone := r.Group("/gemstone")
	{
		gemstone.POST("/bids", d.authMiddleware, d.bidHandler.PlaceGemBid)
		gemstone.GET("/bids/:gemId", d.bidHandler.ListByGem)
		gemstone.GET("/my-bids", d.authMiddleware, d.bidHandler.ListMine)
	}
}
