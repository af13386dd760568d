package main

// 内置 OLT 厂商命令
import _ "github.com/oltcmd/oltcmd/addone/olt/platforms"
