package routes

import (
	panel_handlers "uyetakip.app/handlers/panel"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki kayıt ve defter yönetimi rotalarını tanımlar.
func registerPanelRoutes(app *fiber.App) {
	// Handler instance'larını başta oluştur
	meetingHandler := panel_handlers.NewPanelMeetingHandler()
	attendanceHandler := panel_handlers.NewPanelAttendanceHandler()
	charityHandler := panel_handlers.NewPanelCharityHandler()
	membershipHandler := panel_handlers.NewPanelMembershipHandler()

	panelGroup := app.Group("/panel")

	// --- Toplantılar ---
	panelGroup.Get("/meetings", meetingHandler.ListMeetings)          // GET /panel/meetings
	panelGroup.Post("/meetings", meetingHandler.CreateMeeting)        // POST /panel/meetings
	panelGroup.Get("/meetings/:id", meetingHandler.GetMeeting)        // GET /panel/meetings/{id}
	panelGroup.Put("/meetings/:id", meetingHandler.UpdateMeeting)     // PUT /panel/meetings/{id}
	panelGroup.Delete("/meetings/:id", meetingHandler.DeleteMeeting)  // DELETE /panel/meetings/{id}

	// --- Yoklama Defteri ---
	panelGroup.Get("/meetings/:meetingID/attendance", attendanceHandler.ListAttendance)    // GET /panel/meetings/{id}/attendance
	panelGroup.Post("/meetings/:meetingID/attendance", attendanceHandler.RecordAttendance) // POST /panel/meetings/{id}/attendance
	panelGroup.Put("/attendance/:id", attendanceHandler.UpdateAttendance)                  // PUT /panel/attendance/{id}
	panelGroup.Delete("/attendance/:id", attendanceHandler.DeleteAttendance)               // DELETE /panel/attendance/{id}

	// --- Yardım Etkinlikleri ---
	panelGroup.Get("/charity-events", charityHandler.ListEvents)                            // GET /panel/charity-events
	panelGroup.Post("/charity-events", charityHandler.CreateEvent)                          // POST /panel/charity-events
	panelGroup.Get("/charity-events/:id", charityHandler.GetEvent)                          // GET /panel/charity-events/{id}
	panelGroup.Put("/charity-events/:id/participants", charityHandler.SetParticipants)      // PUT /panel/charity-events/{id}/participants
	panelGroup.Post("/charity-events/:id/participants", charityHandler.AddParticipant)      // POST /panel/charity-events/{id}/participants
	panelGroup.Delete("/charity-events/:id/participants", charityHandler.RemoveParticipant) // DELETE /panel/charity-events/{id}/participants
	panelGroup.Delete("/charity-events/:id", charityHandler.DeleteEvent)                    // DELETE /panel/charity-events/{id}

	// --- Misafirler ---
	panelGroup.Get("/guests", membershipHandler.ListGuests)                        // GET /panel/guests
	panelGroup.Post("/guests", membershipHandler.CreateGuest)                      // POST /panel/guests
	panelGroup.Get("/guests/:id", membershipHandler.GetGuest)                      // GET /panel/guests/{id}
	panelGroup.Put("/guests/:id", membershipHandler.UpdateGuest)                   // PUT /panel/guests/{id}
	panelGroup.Post("/guests/:id/deactivate", membershipHandler.DeactivateGuest)   // POST /panel/guests/{id}/deactivate
	panelGroup.Get("/guests/:id/eligibility", membershipHandler.GetGuestEligibility) // GET /panel/guests/{id}/eligibility
	panelGroup.Post("/guests/:id/promote", membershipHandler.PromoteGuest)         // POST /panel/guests/{id}/promote

	// --- Pipeliner'lar ---
	panelGroup.Get("/pipeliners", membershipHandler.ListPipeliners)                          // GET /panel/pipeliners
	panelGroup.Post("/pipeliners", membershipHandler.CreatePipeliner)                        // POST /panel/pipeliners
	panelGroup.Get("/pipeliners/:id", membershipHandler.GetPipeliner)                        // GET /panel/pipeliners/{id}
	panelGroup.Get("/pipeliners/:id/eligibility", membershipHandler.GetPipelinerEligibility) // GET /panel/pipeliners/{id}/eligibility
	panelGroup.Post("/pipeliners/:id/promote", membershipHandler.PromotePipeliner)           // POST /panel/pipeliners/{id}/promote

	// --- Üyeler ---
	panelGroup.Get("/members", membershipHandler.ListMembers)   // GET /panel/members
	panelGroup.Post("/members", membershipHandler.CreateMember) // POST /panel/members
	panelGroup.Get("/members/:id", membershipHandler.GetMember) // GET /panel/members/{id}
}
