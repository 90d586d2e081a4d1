package main

import (
	"fmt"
	"net/http"

	"github.com/medroster/roster-backend-go/internal/config"
	"github.com/medroster/roster-backend-go/internal/domain/roster"
	appHTTP "github.com/medroster/roster-backend-go/internal/handler/http"
	"github.com/medroster/roster-backend-go/internal/pkg/cron"
	"github.com/medroster/roster-backend-go/internal/pkg/snapshot"
	attendanceService "github.com/medroster/roster-backend-go/internal/service/attendance"
	rosterService "github.com/medroster/roster-backend-go/internal/service/roster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	store := snapshot.NewStore()

	attendanceSvc := attendanceService.NewAttendanceService(cfg.Policy())
	rosterSvc := rosterService.NewRosterService(cfg.DefaultShift(), roster.FilterMode(cfg.Presence.Mode))

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	rosterHandler := appHTTP.NewRosterHandler(rosterSvc, store, cfg.Presence.Mode)

	scheduler := cron.NewScheduler()
	cron.NewRosterJobs(store, cfg.Presence.SnapshotStaleAfter).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, attendanceHandler, rosterHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
